/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/materials-commons/roster/cmd/rosterd/cmd"

func main() {
	cmd.Execute()
}
