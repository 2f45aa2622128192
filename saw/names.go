package saw

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// MetadataName is the name of the metadata record inside a table directory.
const MetadataName = "Metadata.saw"

const bodySuffix = ".col"

// bodyName is the blob name of column id, e.g. "0003.col".
func bodyName(id int) string { return fmt.Sprintf("%04d%s", id, bodySuffix) }

// DirName maps a table name onto its directory. Whitespace is removed and
// path separators are replaced, so every table lives exactly one level
// below the store root.
func DirName(table string) (string, error) {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		}
		return r
	}, table)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: table name %q has no usable directory name", ErrInvalidTable, table)
	}
	return name, nil
}

func metadataPath(dir string) string { return path.Join(dir, MetadataName) }

func bodyPath(dir string, id int) string { return path.Join(dir, bodyName(id)) }
