package main

import "github.com/revlence/transcribe-api/cmd"

// @title           Transcribe API
// @version         1.0.0
// @description     Audio transcription service with segment and word timestamps
// @contact.name    API Support
// @contact.url     https://github.com/revlence/transcribe-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
