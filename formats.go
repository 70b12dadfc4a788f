package chquery

// Output format tags understood by the target engine. Any format string
// may be passed to Format; only the streamable subset below may be used
// with Stream.
const (
	FormatJSON                                       = "JSON"
	FormatJSONEachRow                                = "JSONEachRow"
	FormatJSONStringsEachRow                         = "JSONStringsEachRow"
	FormatJSONCompactEachRow                         = "JSONCompactEachRow"
	FormatJSONCompactEachRowWithNames                = "JSONCompactEachRowWithNames"
	FormatJSONCompactEachRowWithNamesAndTypes        = "JSONCompactEachRowWithNamesAndTypes"
	FormatJSONCompactStringsEachRow                  = "JSONCompactStringsEachRow"
	FormatJSONCompactStringsEachRowWithNames         = "JSONCompactStringsEachRowWithNames"
	FormatJSONCompactStringsEachRowWithNamesAndTypes = "JSONCompactStringsEachRowWithNamesAndTypes"
	FormatCSV                                        = "CSV"
	FormatCSVWithNames                               = "CSVWithNames"
	FormatTabSeparated                               = "TabSeparated"
	FormatTabSeparatedRaw                            = "TabSeparatedRaw"
	FormatTabSeparatedWithNames                      = "TabSeparatedWithNames"
	FormatTabSeparatedWithNamesAndTypes              = "TabSeparatedWithNamesAndTypes"
)

// streamableFormats is the fixed allowlist of formats permitted for
// incremental consumption. Stream rejects anything else synchronously,
// before any I/O.
var streamableFormats = map[string]bool{
	FormatJSONEachRow:                                true,
	FormatJSONStringsEachRow:                         true,
	FormatJSONCompactEachRow:                         true,
	FormatJSONCompactEachRowWithNames:                true,
	FormatJSONCompactEachRowWithNamesAndTypes:        true,
	FormatJSONCompactStringsEachRow:                  true,
	FormatJSONCompactStringsEachRowWithNames:         true,
	FormatJSONCompactStringsEachRowWithNamesAndTypes: true,
	FormatCSV:                           true,
	FormatCSVWithNames:                  true,
	FormatTabSeparated:                  true,
	FormatTabSeparatedRaw:               true,
	FormatTabSeparatedWithNames:         true,
	FormatTabSeparatedWithNamesAndTypes: true,
}

// IsStreamableFormat reports whether the format tag is in the fixed
// streamable allowlist.
func IsStreamableFormat(format string) bool {
	return streamableFormats[format]
}
