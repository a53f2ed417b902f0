// Package normalize - Component synonym table
// Static domain data mapping colloquial part names to KB component names.
package normalize

// defaultSynonyms maps colloquial terms to canonical KB component names.
// Keys are compared case and space insensitively.
var defaultSynonyms = map[string]string{
	"trunk lid":          "Dickey Panel",
	"dickey":             "Dickey Panel",
	"dicky":              "Dickey Panel",
	"dickey door":        "Dickey Panel",
	"dickey panel":       "Dickey Panel",
	"boot":               "Dickey Panel",
	"rear panel":         "Back Panel/ Skirt Panel",
	"headlights":         "Headlight Left",
	"front lights":       "Headlight Left",
	"taillights":         "Tail light",
	"taillight":          "Tail light",
	"tail light":         "Tail light",
	"damaged headlight":  "Headlight Left",
	"broken headlight":   "Headlight Left",
	"bonnet":             "Bonnet Hood",
	"hood":               "Bonnet Hood",
	"bumper front":       "Bumper Front",
	"bumper rear":        "Bumper Rear",
	"front bumper":       "Bumper Front",
	"bumper holder":      "Bumper Holder Rear",
	"bumper holder rear": "Bumper Holder Rear",
}
