package share

import (
	"net/url"
	"testing"

	"github.com/blues/launchpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitterURL(t *testing.T) {
	got := TwitterURL("Back this project", "https://example.com/projects/1", []string{"Solana", "Launchpad"})
	assert.Equal(t,
		"https://twitter.com/intent/tweet?hashtags=Solana%2CLaunchpad&text=Back+this+project&url=https%3A%2F%2Fexample.com%2Fprojects%2F1",
		got)
}

func TestFarcasterURL(t *testing.T) {
	got := FarcasterURL("Back this", "https://example.com/p")

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "warpcast.com", u.Host)
	assert.Equal(t, "/~/compose", u.Path)
	assert.Equal(t, "Back this https://example.com/p", u.Query().Get("text"))
	assert.Equal(t, "https://example.com/p", u.Query().Get("embeds"))
}

func TestURL(t *testing.T) {
	tw, err := URL(PlatformTwitter, "a", "b", nil)
	require.NoError(t, err)
	assert.Contains(t, tw, twitterIntentURL)

	fc, err := URL(PlatformFarcaster, "a", "b", nil)
	require.NoError(t, err)
	assert.Contains(t, fc, farcasterComposer)

	_, err = URL("Myspace", "a", "b", nil)
	assert.Error(t, err)
}

func TestProjectLinks(t *testing.T) {
	p := model.Project{ID: 3, ProjectName: "Green Energy DAO", TokenSymbol: "GREEN"}
	links := ProjectLinks(p, "https://launch.example/", []string{"GREEN"})

	assert.Equal(t, "https://launch.example/projects/3", links.PageURL)
	assert.Equal(t, "Check out Green Energy DAO ($GREEN) on the launchpad!", links.Text)

	u, err := url.Parse(links.Twitter)
	require.NoError(t, err)
	assert.Equal(t, links.Text, u.Query().Get("text"))
	assert.Equal(t, links.PageURL, u.Query().Get("url"))
	assert.Equal(t, "GREEN", u.Query().Get("hashtags"))
}
