package protocol

// DocumentFilter denotes a document by properties like the scheme of its URI
// and its language identifier. An empty property matches anything.
type DocumentFilter struct {
	/*Language defined:
	 * A language id, like `sml`.
	 */
	Language string `json:"language,omitempty"`

	/*Scheme defined:
	 * A URI scheme, like `file` or `untitled`.
	 */
	Scheme string `json:"scheme,omitempty"`

	/*Pattern defined:
	 * A glob pattern, like `*.{sml,sig}`.
	 */
	Pattern string `json:"pattern,omitempty"`
}

// Matches reports whether a document with the given URI scheme and language
// identifier is denoted by the filter. Pattern matching is left to the host.
func (f *DocumentFilter) Matches(scheme, language string) bool {
	if f.Scheme != "" && f.Scheme != scheme {
		return false
	}
	if f.Language != "" && f.Language != language {
		return false
	}
	return true
}

// DocumentSelector is the combination of one or more document filters.
type DocumentSelector []DocumentFilter

// Matches reports whether any filter in the selector matches.
func (s DocumentSelector) Matches(scheme, language string) bool {
	for i := range s {
		if s[i].Matches(scheme, language) {
			return true
		}
	}
	return false
}
