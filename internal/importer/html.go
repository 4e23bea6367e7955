package importer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxCleanHTMLBytes caps the cleaned page handed to the extraction model.
const MaxCleanHTMLBytes = 150_000

var (
	scriptRe      = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe       = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	commentRe     = regexp.MustCompile(`(?s)<!--.*?-->`)
	styleAttrRe   = regexp.MustCompile(`(?i)\s+style\s*=\s*"[^"]*"`)
	dataAttrRe    = regexp.MustCompile(`\s+data-([a-zA-Z0-9\-]+)\s*=\s*"[^"]*"`)
	svgRe         = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	dataURIRe     = regexp.MustCompile(`(?i)(src|href|background|background-image)\s*=\s*"data:image/[^"]*"`)
	metaLinkRe    = regexp.MustCompile(`(?i)<(?:meta|link)[^>]*>`)
	blankRunRe    = regexp.MustCompile(`[ \t]+`)
	newlineRunRe  = regexp.MustCompile(`\n+`)
	emptyInlineRe []*regexp.Regexp
)

func init() {
	// RE2 has no backreferences, so each inline tag gets its own pattern.
	for _, tag := range []string{"span", "div", "i", "b", "strong", "em"} {
		emptyInlineRe = append(emptyInlineRe, regexp.MustCompile(`(?i)<`+tag+`(?:\s[^>]*)?>\s*</`+tag+`>`))
	}
}

// CleanHTML strips a saved course page down to the markup that carries
// lesson structure: scripts, styles, comments, SVG, metadata, inline styles,
// data attributes (except data-duration) and embedded images are removed,
// empty inline elements dropped and whitespace collapsed. The result is
// capped at MaxCleanHTMLBytes.
func CleanHTML(html string) string {
	html = scriptRe.ReplaceAllString(html, "")
	html = styleRe.ReplaceAllString(html, "")
	html = commentRe.ReplaceAllString(html, "")
	html = styleAttrRe.ReplaceAllString(html, "")
	html = dataAttrRe.ReplaceAllStringFunc(html, func(attr string) string {
		name := dataAttrRe.FindStringSubmatch(attr)[1]
		if strings.HasPrefix(strings.ToLower(name), "duration") {
			return attr
		}
		return ""
	})
	html = svgRe.ReplaceAllString(html, "")
	html = dataURIRe.ReplaceAllString(html, "")
	html = metaLinkRe.ReplaceAllString(html, "")

	// Nested empty elements collapse one level per pass.
	for range 3 {
		for _, re := range emptyInlineRe {
			html = re.ReplaceAllString(html, "")
		}
	}

	html = blankRunRe.ReplaceAllString(html, " ")
	html = newlineRunRe.ReplaceAllString(html, "\n")

	return strings.TrimSpace(truncateUTF8(html, MaxCleanHTMLBytes))
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
