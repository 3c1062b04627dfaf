// Command taghelpers serves or renders the tag helper sample application.
//
// Usage:
//
//	taghelpers serve --addr :8080 --path-base /app
//	taghelpers render index --auth admin
package main

func main() {
	Execute()
}
