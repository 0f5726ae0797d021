// Package git detects repository metadata for a documented project. When the
// configuration leaves the repository or source tree URL empty, the values
// are derived from the checkout the documentation is built from.
package git

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/cppdoc/internal/logfields"
)

// Info describes the repository a project is built from.
type Info struct {
	// RepositoryURL is the https URL of the origin remote.
	RepositoryURL string
	// SourceTreeURL is a prefix for "view source" links, including the
	// branch, e.g. https://github.com/owner/repo/blob/main/.
	SourceTreeURL string
	// Branch is the checked-out branch name, empty on a detached head.
	Branch string
}

// Detect opens the repository containing dir and derives its remote URLs.
func Detect(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("resolve origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, fmt.Errorf("origin remote has no URL")
	}

	info := &Info{RepositoryURL: httpsURL(urls[0])}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	info.SourceTreeURL = sourceTreeURL(info.RepositoryURL, info.Branch, head.Hash().String())

	slog.Debug("Detected repository",
		logfields.URL(info.RepositoryURL),
		slog.String("branch", info.Branch))
	return info, nil
}

// httpsURL normalizes a remote URL to https. SSH remotes in scp form
// (git@host:owner/repo.git) and ssh:// URLs are rewritten; a trailing .git
// suffix is dropped.
func httpsURL(remote string) string {
	s := remote
	switch {
	case strings.HasPrefix(s, "ssh://"):
		s = strings.TrimPrefix(s, "ssh://")
		if at := strings.Index(s, "@"); at >= 0 {
			s = s[at+1:]
		}
		s = "https://" + strings.Replace(s, ":", "/", 1)
	case strings.Contains(s, "@") && !strings.Contains(s, "://"):
		s = s[strings.Index(s, "@")+1:]
		s = "https://" + strings.Replace(s, ":", "/", 1)
	}
	return strings.TrimSuffix(s, ".git")
}

// sourceTreeURL builds the browse prefix for a forge. GitHub and Gitea style
// forges use /blob/<ref>/, GitLab uses /-/blob/<ref>/. A detached head falls
// back to the commit hash.
func sourceTreeURL(repoURL, branch, hash string) string {
	if repoURL == "" {
		return ""
	}
	ref := branch
	if ref == "" {
		ref = hash
	}
	if strings.Contains(repoURL, "gitlab") {
		return repoURL + "/-/blob/" + ref + "/"
	}
	return repoURL + "/blob/" + ref + "/"
}
