package main

import (
	"github.com/NVIDIA/kubenum/pkg/cli"
)

func main() {
	cli.Execute()
}
