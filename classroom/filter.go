package classroom

import "github.com/google/go-github/github"

// noUserSentinel stands in for pull requests whose payload carries no
// author login; it can never collide with a roster username.
const noUserSentinel = "no user found"

// defaultBranches is the strict whitelist of head branches that count as
// submissions. Case-sensitive: "Main" or feature branches never match.
var defaultBranches = map[string]bool{
	"main":   true,
	"master": true,
}

// Submission is a pull request that passed the filter: its author is a
// roster member and its head branch is a default branch.
type Submission struct {
	// Author is the platform username of the pull request author.
	Author string
	// Student is the roster display name for Author.
	Student string
	Branch  string
	// RepoFullName is the owner/name of the repository to clone.
	RepoFullName string
}

// FilterSubmissions reduces the fetched pull requests to roster-member
// submissions. Output preserves input order; duplicate authors pass
// through and are collapsed by the materializer's destination check.
func FilterSubmissions(pulls []*github.PullRequest, roster Roster) []Submission {
	names := roster.Lookup()

	var subs []Submission
	for _, pull := range pulls {
		author := pull.GetUser().GetLogin()
		if author == "" {
			author = noUserSentinel
		}
		name, member := names[author]
		if !member {
			continue
		}
		if !defaultBranches[pull.GetHead().GetRef()] {
			continue
		}
		subs = append(subs, Submission{
			Author:       author,
			Student:      name,
			Branch:       pull.GetHead().GetRef(),
			RepoFullName: pull.GetBase().GetRepo().GetFullName(),
		})
	}
	return subs
}
