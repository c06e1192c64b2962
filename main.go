package main

import "debpatch/internal/debpatch"

func main() {
	debpatch.Main()
}
