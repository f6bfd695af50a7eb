package debugger

import (
	"fmt"
	"sort"
)

type watch struct {
	ma   mappedAddress
	data uint8
	prev uint8
}

// checkWatches returns every watch whose value has changed since the
// previous check
func (m *debugger) checkWatches() ([]watch, error) {
	var changed []watch
	for i, w := range m.watches {
		d, err := w.ma.area.Read(w.ma.idx)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		if d != w.data {
			w.prev = w.data
			w.data = d
			m.watches[i] = w
			changed = append(changed, w)
		}
	}
	sort.Slice(changed, func(i, j int) bool {
		return changed[i].ma.address < changed[j].ma.address
	})
	return changed, nil
}
