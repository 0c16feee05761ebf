// Command digipath finds digivolution routes from the command line and
// serves them over HTTP.
package main

func main() {
	Execute()
}
