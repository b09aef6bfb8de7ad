package main

import "github.com/geofront-io/geofront/cmd/geoctl/cmd"

func main() {
	cmd.Execute()
}
