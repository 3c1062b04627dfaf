// Package sample is a small web application that exercises every tag helper
// in the pack: a customer page rendered from embedded pongo2 templates, a
// query-string authentication scheme and the AdminPolicy/PermissionPolicy
// authorization policies.
//
// The handler responds to GET and HEAD requests. "/" renders the index page,
// "/{name}" renders any other top-level page and files under the web root
// (js/site.js) are served as static assets.
package sample
