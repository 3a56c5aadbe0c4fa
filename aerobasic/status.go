package aerobasic

import (
	"fmt"
	"strings"

	"github.com/reincas/nanofab/axis"
)

// StatusQuery is one (target, item) pair of a ~STATUS command. Inside
// ~STATUS the item goes on the wire by its plain name, without the
// DATAITEM_ prefix the status functions use.
type StatusQuery struct {
	Target string
	Item   DataItem
}

// AxisQuery queries a data item for a single axis.
func AxisQuery(ax axis.Axis, item DataItem) StatusQuery {
	return StatusQuery{Target: ax.String(), Item: item}
}

// TaskQuery queries a data item for a task slot.
func TaskQuery(slot int, item DataItem) StatusQuery {
	return StatusQuery{Target: fmt.Sprintf("%d", slot), Item: item}
}

func (q StatusQuery) String() string {
	return fmt.Sprintf("(%s, %s)", q.Target, q.Item)
}

// StatusCommand renders a ~STATUS command over one or more queries. The
// controller answers with one whitespace-separated value per query.
func StatusCommand(queries ...StatusQuery) (string, error) {
	if len(queries) == 0 {
		return "", fmt.Errorf("status command needs at least one query")
	}
	parts := make([]string, len(queries))
	for i, q := range queries {
		parts[i] = q.String()
	}
	return "~STATUS " + strings.Join(parts, " "), nil
}

// Status sends a ~STATUS command and splits the response into one field
// per query.
func Status(s Sender, queries ...StatusQuery) ([]string, error) {
	cmd, err := StatusCommand(queries...)
	if err != nil {
		return nil, err
	}
	resp, err := s.Send(cmd)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(resp)
	if len(fields) != len(queries) {
		return nil, fmt.Errorf("status response has %d fields for %d queries: %q",
			len(fields), len(queries), resp)
	}
	return fields, nil
}
