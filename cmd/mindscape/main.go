// Command mindscape is a terminal client for the MindScape assistant.
package main

func main() {
	Execute()
}
