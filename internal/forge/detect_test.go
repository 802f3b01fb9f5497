package forge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		hostname string
		repo     RepoID
		provider Provider
	}{
		{
			name:     "github ssh",
			url:      "git@github.com:octocat/hello.git",
			hostname: "github.com",
			repo:     RepoID{Owner: "octocat", Name: "hello"},
			provider: ProviderGitHub,
		},
		{
			name:     "github https",
			url:      "https://github.com/octocat/hello.git",
			hostname: "github.com",
			repo:     RepoID{Owner: "octocat", Name: "hello"},
			provider: ProviderGitHub,
		},
		{
			name:     "github https without suffix",
			url:      "https://github.com/octocat/hello",
			hostname: "github.com",
			repo:     RepoID{Owner: "octocat", Name: "hello"},
			provider: ProviderGitHub,
		},
		{
			name:     "gitlab ssh",
			url:      "git@gitlab.com:group/project.git",
			hostname: "gitlab.com",
			repo:     RepoID{Owner: "group", Name: "project"},
			provider: ProviderGitLab,
		},
		{
			name:     "gitlab nested groups",
			url:      "https://gitlab.com/group/subgroup/project.git",
			hostname: "gitlab.com",
			repo:     RepoID{Owner: "group/subgroup", Name: "project"},
			provider: ProviderGitLab,
		},
		{
			name:     "self hosted gitlab",
			url:      "git@gitlab.example.org:team/tool.git",
			hostname: "gitlab.example.org",
			repo:     RepoID{Owner: "team", Name: "tool"},
			provider: ProviderGitLab,
		},
		{
			name:     "ssh scheme with user",
			url:      "ssh://git@github.com/octocat/hello.git",
			hostname: "github.com",
			repo:     RepoID{Owner: "octocat", Name: "hello"},
			provider: ProviderGitHub,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			remote, err := Classify(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.hostname, remote.Hostname)
			require.Equal(t, tt.repo, remote.Repo)
			require.Equal(t, tt.provider, remote.Provider)
		})
	}

	t.Run("ssh and https forms agree on identity", func(t *testing.T) {
		t.Parallel()
		ssh, err := Classify("git@github.com:octocat/hello.git")
		require.NoError(t, err)
		https, err := Classify("https://github.com/octocat/hello")
		require.NoError(t, err)
		require.Equal(t, ssh.Repo, https.Repo)
	})

	t.Run("rejects unparseable urls", func(t *testing.T) {
		t.Parallel()
		for _, url := range []string{"", "not-a-remote", "https://github.com", "git@github.com"} {
			_, err := Classify(url)
			require.Error(t, err, "url %q", url)
		}
	})
}
