// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package demo implements sample controllers for the jdocd server.
package demo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/internal/config"
	"github.com/creachadair/jdoc/serve"
)

// Controllers returns the demo controllers, serving the data from cfg.
func Controllers(cfg config.Config) []serve.Controller {
	return []serve.Controller{
		Users{Entries: cfg.Users},
		Products{Entries: cfg.Products},
		Generic{},
	}
}

// Health reports that the server is running.
func Health(*serve.Request) (any, error) { return "server is running", nil }

// A User is the record served by the users controller.
type User struct {
	ID   int `json:"id"`
	Name string
}

// Users serves a fixed list of users under api/users.
type Users struct {
	Entries []config.Entry
}

func (Users) Prefix() string { return "api/users" }

func (u Users) Routes() []serve.Route {
	return []serve.Route{
		{Path: "list", Handle: u.list},
		{Path: "get/{id}", Handle: u.get},
		{Path: "search", Handle: u.search},
	}
}

func (u Users) all() []User {
	out := make([]User, len(u.Entries))
	for i, e := range u.Entries {
		out[i] = User{ID: e.ID, Name: e.Name}
	}
	return out
}

func (u Users) list(*serve.Request) (any, error) { return u.all(), nil }

func (u Users) get(r *serve.Request) (any, error) {
	id, err := r.PathInt("id")
	if err != nil {
		return nil, err
	}
	users := u.all()
	if i := slices.IndexFunc(users, func(v User) bool { return v.ID == id }); i >= 0 {
		return users[i], nil
	}
	return nil, fmt.Errorf("user %d: %w", id, serve.ErrNotFound)
}

func (u Users) search(r *serve.Request) (any, error) {
	query := strings.ToLower(r.Query("query"))
	out := []User{}
	for _, v := range u.all() {
		if strings.Contains(strings.ToLower(v.Name), query) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Products serves a product catalog under api/products.
type Products struct {
	Entries []config.Entry
}

func (Products) Prefix() string { return "api/products" }

func (p Products) Routes() []serve.Route {
	return []serve.Route{{Path: "all", Handle: p.all}}
}

// all builds its result directly as a document.
func (p Products) all(*serve.Request) (any, error) {
	items := make([]jdoc.Node, len(p.Entries))
	for i, e := range p.Entries {
		items[i] = jdoc.NewObject(jdoc.Field("id", e.ID), jdoc.Field("name", e.Name))
	}
	return jdoc.NewObject(
		jdoc.NewProperty("products", jdoc.NewArray(items...)),
		jdoc.Field("count", len(items)),
	), nil
}

// A Pair is a pair of values.
type Pair[A, B any] struct {
	First  A
	Second B
}

// maxRepeat bounds the length of the text generated by the args route.
const maxRepeat = 1 << 16

// Generic demonstrates a variety of argument and result types under
// api/generic.
type Generic struct{}

func (Generic) Prefix() string { return "api/generic" }

func (Generic) Routes() []serve.Route {
	return []serve.Route{
		{Path: "ints", Handle: func(*serve.Request) (any, error) {
			return []int{1, 2, 3}, nil
		}},
		{Path: "pair", Handle: func(*serve.Request) (any, error) {
			return Pair[string, string]{"um", "dois"}, nil
		}},
		{Path: "path/{pathvar}", Handle: func(r *serve.Request) (any, error) {
			return r.PathValue("pathvar") + "!", nil
		}},
		{Path: "args", Handle: func(r *serve.Request) (any, error) {
			n, err := r.QueryInt("n")
			if err != nil {
				return nil, err
			} else if n < 0 {
				return nil, fmt.Errorf("%w: n must not be negative", serve.ErrBadRequest)
			}
			text := r.Query("text")
			if len(text) != 0 && n > maxRepeat/len(text) {
				return nil, fmt.Errorf("%w: result would exceed %d bytes", serve.ErrBadRequest, maxRepeat)
			}
			return map[string]string{text: strings.Repeat(text, n)}, nil
		}},
	}
}
