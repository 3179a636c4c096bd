// Package share 生成社交平台分享链接，只做URL拼接，不持有状态。
package share

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/blues/launchpad/internal/model"
)

const (
	twitterIntentURL  = "https://twitter.com/intent/tweet"
	farcasterComposer = "https://warpcast.com/~/compose"
)

// Platform 分享平台
type Platform string

const (
	PlatformTwitter   Platform = "Twitter"
	PlatformFarcaster Platform = "Farcaster"
)

// TwitterURL X/Twitter 发帖意图链接
func TwitterURL(text, pageURL string, hashtags []string) string {
	params := url.Values{}
	params.Set("text", text)
	params.Set("url", pageURL)
	params.Set("hashtags", strings.Join(hashtags, ","))
	return twitterIntentURL + "?" + params.Encode()
}

// FarcasterURL Warpcast 编辑器链接，正文末尾附带页面地址，同时作为嵌入
func FarcasterURL(text, pageURL string) string {
	params := url.Values{}
	params.Set("text", text+" "+pageURL)
	params.Set("embeds", pageURL)
	return farcasterComposer + "?" + params.Encode()
}

// URL 按平台生成分享链接
func URL(platform Platform, text, pageURL string, hashtags []string) (string, error) {
	switch platform {
	case PlatformTwitter:
		return TwitterURL(text, pageURL, hashtags), nil
	case PlatformFarcaster:
		return FarcasterURL(text, pageURL), nil
	}
	return "", fmt.Errorf("unsupported share platform %q", platform)
}

// Links 项目的分享链接集合
type Links struct {
	PageURL   string `json:"pageUrl"`
	Text      string `json:"text"`
	Twitter   string `json:"twitter"`
	Farcaster string `json:"farcaster"`
}

// ProjectPageURL 项目详情页地址
func ProjectPageURL(baseURL string, projectID int64) string {
	return strings.TrimRight(baseURL, "/") + "/projects/" + strconv.FormatInt(projectID, 10)
}

// ProjectText 分享文案
func ProjectText(p model.Project) string {
	return fmt.Sprintf("Check out %s ($%s) on the launchpad!", p.ProjectName, p.TokenSymbol)
}

// ProjectLinks 生成项目在各平台的分享链接
func ProjectLinks(p model.Project, baseURL string, hashtags []string) Links {
	page := ProjectPageURL(baseURL, p.ID)
	text := ProjectText(p)
	return Links{
		PageURL:   page,
		Text:      text,
		Twitter:   TwitterURL(text, page, hashtags),
		Farcaster: FarcasterURL(text, page),
	}
}
