package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/newsdigest/internal/emailservice"
)

func main() {
	code := emailservice.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv, emailservice.SMTP)
	os.Exit(code)
}
