// Package nav holds the fixed navigation shell shared by every page.
package nav

import (
	"net/http"
	"strings"

	"github.com/frahmantamala/restaurant-ledger/internal/transport"
)

type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var items = []Item{
	{Label: "Dashboard", Path: "/"},
	{Label: "Income", Path: "/income"},
	{Label: "Expenses", Path: "/expenses"},
	{Label: "Purchases", Path: "/purchases"},
	{Label: "Reports", Path: "/reports"},
}

// Items returns a copy of the navigation list in display order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Link is an Item as rendered for one request.
type Link struct {
	Item
	Active bool
}

// Links marks the item owning path as active. "/" only matches itself.
func Links(path string) []Link {
	links := make([]Link, 0, len(items))
	for _, it := range items {
		active := path == it.Path
		if !active && it.Path != "/" {
			active = strings.HasPrefix(path, it.Path+"/")
		}
		links = append(links, Link{Item: it, Active: active})
	}
	return links
}

type Response struct {
	Items []Item `json:"items"`
}

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, Response{Items: Items()})
}
