package views

import "html/template"

// PostPage carries everything the post template renders.
type PostPage struct {
	SiteName string
	Title    string
	Date     string // dd/mm/yyyy
	Category string
	Lead     string
	Body     template.HTML // trusted provider HTML with tables and charts spliced in
	Image    string        // relative to the site root
	ImageAlt string        // banner alt text, Title when empty
	Summary  string
}
