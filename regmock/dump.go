package regmock

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/syifan/goseth"
)

type stateSnapshot struct {
	ID        string
	Name      string
	Capture   bool
	Callbacks bool
	Registers map[string]string
	Log       []snapshotEntry
}

type snapshotEntry struct {
	Access string
	Count  int
}

// DumpTo writes a JSON snapshot of the registers, flags and log, which helps
// when a matcher fails for an unclear reason.
func (s *State) DumpTo(w io.Writer) error {
	snapshot := &stateSnapshot{
		ID:        s.id,
		Name:      s.name,
		Registers: map[string]string{},
	}

	s.do(func() {
		snapshot.Capture = s.capture
		snapshot.Callbacks = s.callbacks

		for _, addr := range slices.Sorted(maps.Keys(s.registers)) {
			snapshot.Registers[s.resolver.Describe(addr)] =
				fmt.Sprintf("0x%08X", s.registers[addr])
		}

		for _, e := range s.log.Entries() {
			snapshot.Log = append(snapshot.Log, snapshotEntry{
				Access: e.Record.Describe(s.resolver),
				Count:  e.Count,
			})
		}
	})

	serializer := goseth.NewSerializer()
	serializer.SetRoot(snapshot)
	serializer.SetMaxDepth(4)

	return serializer.Serialize(w)
}
