// Package main is the entry point for the covidash application
package main

func main() {
	Execute()
}
