package main

import (
	"os"

	_ "authsvc/docs"
)

// @title        authsvc API
// @version      1.0
// @description  User registration, login and bearer-token protected profile service with a public API directory proxy.
// @BasePath     /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
