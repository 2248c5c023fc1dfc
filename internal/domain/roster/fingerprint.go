package roster

import (
	"strconv"

	"github.com/zeebo/xxh3"
)

// Fingerprint digests the leagues and teams content. Two runs over the same
// file produce the same value.
func (r Result) Fingerprint() uint64 {
	h := xxh3.New()
	var buf []byte
	for _, l := range r.Leagues {
		buf = buf[:0]
		buf = append(buf, 'L')
		buf = strconv.AppendInt(buf, l.ID, 10)
		buf = append(buf, 0)
		buf = append(buf, l.Name...)
		buf = append(buf, 0)
		_, _ = h.Write(buf)
	}
	for _, t := range r.Teams {
		buf = buf[:0]
		buf = append(buf, 'T')
		buf = strconv.AppendInt(buf, t.ID, 10)
		buf = append(buf, 0)
		buf = append(buf, t.Name...)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, t.LeagueID, 10)
		buf = append(buf, 0)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
