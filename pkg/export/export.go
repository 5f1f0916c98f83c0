package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/freightops/loadmatch/core/matching"
)

// WriteJSON writes the ranked matches to w in JSON format.
func WriteJSON(w io.Writer, matches []matching.Match) error {
	enc := json.NewEncoder(w)
	return enc.Encode(matches)
}

// WriteCSV writes the ranked matches to w in CSV format.
func WriteCSV(w io.Writer, matches []matching.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"carrier_id", "carrier_name", "total", "lane", "shipper_bonus", "reliability", "capacity", "reasons"}); err != nil {
		return err
	}
	for _, m := range matches {
		rec := []string{
			strconv.FormatInt(m.CarrierID, 10),
			m.CarrierName,
			formatScore(m.Total),
			formatScore(m.Components.Lane),
			formatScore(m.Components.ShipperBonus),
			formatScore(m.Components.Reliability),
			formatScore(m.Components.Capacity),
			strings.Join(m.Reasons, "; "),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
