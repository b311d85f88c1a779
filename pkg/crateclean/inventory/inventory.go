// Package inventory reads a Rekordbox collection XML export and yields the
// set of referenced track locations as canonical paths.
package inventory

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/tobyrandall/crateclean/pkg/crateclean/canonical"
	"github.com/tobyrandall/crateclean/pkg/crateclean/logging"
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

var logger = logging.Get("inventory")

// Collection holds the referenced paths extracted from a Rekordbox export.
type Collection struct {
	// Referenced is the set of canonicalized track locations.
	Referenced types.PathSet

	// TotalRecords is the number of TRACK elements carrying a Location
	// attribute, before deduplication by canonical key.
	TotalRecords int
}

// Read parses the Rekordbox XML export at path and canonicalizes every TRACK
// Location attribute. An unreadable or unparseable file is a fatal
// configuration error; a collection with zero tracks is valid.
func Read(path string, canon canonical.Canonicalizer) (*Collection, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading rekordbox xml %s: %w", path, err)
	}

	col := &Collection{Referenced: types.NewPathSet()}
	for _, track := range doc.FindElements("//TRACK") {
		loc := track.SelectAttrValue("Location", "")
		if loc == "" {
			continue
		}
		col.TotalRecords++
		col.Referenced.Add(canon.Canonicalize(loc))
	}

	logger.Debug("collection parsed", "path", path, "records", col.TotalRecords, "unique", col.Referenced.Len())
	return col, nil
}
