package main

import (
	"os"

	"github.com/upb/recruitment-platform/bootstrap"
	"github.com/upb/recruitment-platform/config"
)

func main() {
	os.Exit(bootstrap.Main(config.ServiceJobs))
}
