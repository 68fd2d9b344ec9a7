package render

import (
	"net/url"
	"strconv"
)

// Base paths of the projects routes.
const (
	ProjectsPath = "/projects"
	NavPath      = ProjectsPath + "/nav"
	JumpPath     = ProjectsPath + "/jump"
	GesturePath  = ProjectsPath + "/gesture"
)

// Direction of a previous/next action.
const (
	DirNext = "next"
	DirPrev = "prev"
)

// ProjectsHref links to the carousel at focus.
func ProjectsHref(focus int) string {
	return ProjectsPath + "?" + url.Values{"focus": {strconv.Itoa(focus)}}.Encode()
}

// NavHref links to one previous/next step from focus.
func NavHref(focus int, dir string) string {
	return NavPath + "?" + url.Values{
		"focus": {strconv.Itoa(focus)},
		"dir":   {dir},
	}.Encode()
}

// JumpHref links to a jump from focus to card to.
func JumpHref(focus, to int) string {
	return JumpPath + "?" + url.Values{
		"focus": {strconv.Itoa(focus)},
		"to":    {strconv.Itoa(to)},
	}.Encode()
}

// GestureHref is the base of the drag endpoint; the page script appends
// start, end and source.
func GestureHref(focus int) string {
	return GesturePath + "?" + url.Values{"focus": {strconv.Itoa(focus)}}.Encode()
}

// DetailHref links to a project's detail view at gallery image image.
func DetailHref(id string, focus, image int) string {
	return ProjectsPath + "/" + url.PathEscape(id) + "?" + url.Values{
		"focus": {strconv.Itoa(focus)},
		"image": {strconv.Itoa(image)},
	}.Encode()
}

// GalleryHref links to one gallery step from image.
func GalleryHref(id string, focus, image int, dir string) string {
	return ProjectsPath + "/" + url.PathEscape(id) + "?" + url.Values{
		"dir":   {dir},
		"focus": {strconv.Itoa(focus)},
		"image": {strconv.Itoa(image)},
	}.Encode()
}
