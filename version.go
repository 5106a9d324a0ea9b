package main

// Version is the application version. Release builds override it with
// -ldflags "-X main.Version=...".
var Version = "0.4.2"
