package config

// Default returns the default configuration. It has no repository; one must
// be given on the command line.
func Default() *Config {
	return &Config{
		Version: 1,
		Output: &OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Checkout: &CheckoutConfig{
			Remote: "origin",
		},
	}
}

// DefaultConfigHCL returns a documented starter configuration file.
func DefaultConfigHCL() string {
	return `# branchsource configuration
version = 1

source {
  # Web URL of the repository: https://<host>[/<prefix>]/<owner>/<repo>[.git]
  repository_url = ""

  # Credentials are read from the environment to keep them out of the file.
  # token takes precedence over username/password.
  # username = env.DAGSHUB_USER
  # password = env.DAGSHUB_TOKEN
  # token    = env.DAGSHUB_TOKEN
}

# Categories of heads to discover. Without discover blocks branches, tags and
# pull requests from the repository itself are discovered.
discover "branches" {}
discover "tags" {}

# Pull requests are built merged onto their target branch unless
# build_on_pull_head is set.
discover "origin_pull_requests" {
  build_on_pull_head = false
}

# Pull requests from forks are never trusted: trusted files come from the
# target branch.
discover "fork_pull_requests" {
  build_on_pull_head = false
}

# Name filters per head kind (branch, tag, pull_request) using glob patterns.
# filter "branch" {
#   include = ["main", "release/**"]
#   exclude = ["wip/**"]
# }

output {
  # text, json or compact
  format = "text"
  # auto, always or never
  color = "auto"
}

checkout {
  # Remote alias used for fetched refs
  remote = "origin"
}
`
}
