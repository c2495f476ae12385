// Package navigation builds the page title and breadcrumb trail shown by the
// base layout.
package navigation

import (
	"github.com/mkeenan750/snapcourse/internal/course"
)

// Home is the target of the first breadcrumb.
const Home = "/dashboard"

// MsgHome is the message id of the first breadcrumb.
const MsgHome = "home"

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle   string
	ActivePage  string
	Breadcrumbs []BreadcrumbItem
}

// NewContext creates a navigation context starting at the dashboard.
func NewContext(tr course.Translator, pageTitle, activePage string) *Context {
	nav := &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Breadcrumbs: make([]BreadcrumbItem, 0, 4), //nolint:mnd
	}

	return nav.AddBreadcrumb(tr.T(MsgHome, nil), Home, activePage == "dashboard")
}

// ForCourse creates the navigation of a course page.
func ForCourse(tr course.Translator, c course.Course) *Context {
	return NewContext(tr, c.FullName, "course").
		AddBreadcrumb(c.ShortName, course.CourseURL(c.ID), true)
}

// ForSection creates the navigation of a page about section s of c.
func ForSection(tr course.Translator, c course.Course, s course.SectionInfo) *Context {
	nav := ForCourse(tr, c)
	nav.Breadcrumbs[len(nav.Breadcrumbs)-1].Active = false
	nav.PageTitle = c.FullName + ": " + course.SectionName(c, s, tr)

	return nav.AddBreadcrumb(course.SectionName(c, s, tr), course.SectionPageURL(c.ID, s.Number), true)
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive reports whether page is the current page.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
