package bluesky

import "regexp"

var linkRe = regexp.MustCompile(`https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*`)

// LinkSpan is a URL occurrence addressed by UTF-8 byte offsets, [ByteStart, ByteEnd).
type LinkSpan struct {
	ByteStart int
	ByteEnd   int
	URI       string
}

// DetectLinks scans text left to right and returns every URL with its byte
// range. Go strings are UTF-8, so regexp indexes are already byte offsets.
func DetectLinks(text string) []LinkSpan {
	locs := linkRe.FindAllStringIndex(text, -1)
	spans := make([]LinkSpan, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, LinkSpan{
			ByteStart: loc[0],
			ByteEnd:   loc[1],
			URI:       text[loc[0]:loc[1]],
		})
	}
	return spans
}

// BuildFacets turns detected links into link facets for a post record.
func BuildFacets(text string) []Facet {
	spans := DetectLinks(text)
	facets := make([]Facet, 0, len(spans))
	for _, s := range spans {
		facets = append(facets, Facet{
			Index:    ByteSlice{ByteStart: s.ByteStart, ByteEnd: s.ByteEnd},
			Features: []FacetFeature{{Type: FacetLinkType, URI: s.URI}},
		})
	}
	return facets
}
