package buildinfo

const (
	ProjectName    = "codeclash"
	ProjectVersion = "v1.2.0"
	GithubURL      = "https://github.com/codeclash-games/codeclash"

	GreetingCLI = "%s %s | authoritative match server\n%s\n\n"
)

var Graffiti = `
  ___  ___  ___  ___  ___  _    __   ___  _ _
 / __|/ _ \|   \| __|/ __|| |  / _\ / __|| | |
| (__| (_) | |) | _|| (__ | |_| /\ |\__ \|-- |
 \___|\___/|___/|___|\___||___|_||_||___/|_|_|
`
