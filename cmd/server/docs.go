package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Fund Tracker API
// @version         0.1.0
// @description     Weekly private-fund performance report browsing.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
