// Package engine wires the standard variable providers into a ready-to-use
// resolver.
//
// The registry order decides precedence when a name is defined in more
// than one place:
//
//  1. system ($guid, $timestamp, ...), never cached
//  2. request (login.response.body.$.token)
//  3. file (@name = value)
//  4. environment (settings file)
//
// Basic usage:
//
//	doc, err := document.Load("api.http")
//	if err != nil {
//		return err
//	}
//	e := engine.New(engine.WithSettings(settings), engine.WithEnvironment("local"))
//	req, _ := doc.Request("login")
//	text := e.ResolveRequest(ctx, doc, req, nil)
//
// A cache passed to Resolve or ResolveRequest keeps request, file and
// environment values stable across calls that share it.
package engine
