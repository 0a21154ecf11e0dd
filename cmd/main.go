package main

import (
	"os"
)

// @title           Media Insight Dashboard API
// @version         1.0
// @description     Filters a media-mention dataset, aggregates it into five dashboard views and pairs each view with an LLM-generated insight.

// @contact.name   API Support Team
// @contact.url    http://www.example.com/support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @tag.name         dashboard
// @tag.description  Full dashboard and its filter defaults

// @tag.name         views
// @tag.description  Single views and independently triggered insights

// @tag.name         sessions
// @tag.description  Sessions that let newer requests supersede older ones

// @tag.name         health
// @tag.description  API health check operations

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
