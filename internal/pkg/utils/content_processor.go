package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// tagClasses maps CMS HTML tags to the utility classes the rest of the site
// uses, so admin-authored pages render consistently without styled markup.
var tagClasses = map[string]string{
	"h1":         "text-4xl font-bold mb-4 mt-6",
	"h2":         "text-3xl font-bold mb-3 mt-5",
	"h3":         "text-2xl font-bold mb-2 mt-4",
	"h4":         "text-xl font-bold mb-2 mt-3",
	"p":          "mb-4 text-base-content leading-relaxed",
	"ul":         "list-disc list-inside mb-4 ml-4 space-y-2",
	"ol":         "list-decimal list-inside mb-4 ml-4 space-y-2",
	"li":         "text-base-content",
	"blockquote": "border-l-4 border-primary pl-4 italic mb-4 text-base-content/80",
	"table":      "table table-bordered w-full mb-4",
	"a":          "link link-primary",
	"strong":     "font-bold",
	"em":         "italic",
}

// ProcessHTMLContent decorates admin-authored CMS HTML with utility classes.
// Elements that already carry a class attribute are left untouched.
func ProcessHTMLContent(content string) string {
	for tag, classes := range tagClasses {
		re := regexp.MustCompile(fmt.Sprintf(`<%s(\s[^>]*)?>`, tag))
		content = re.ReplaceAllStringFunc(content, func(match string) string {
			attrs := strings.TrimSuffix(strings.TrimPrefix(match, "<"+tag), ">")
			if strings.Contains(attrs, "class=") {
				return match
			}
			return fmt.Sprintf(`<%s%s class="%s">`, tag, attrs, classes)
		})
	}
	return content
}
