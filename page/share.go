package page

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL 生成社交平台的分享链接，不支持的平台返回 false
func ShareURL(platform, pageURL, text string) (string, bool) {
	u := encodeComponent(pageURL)
	switch strings.ToLower(platform) {
	case "twitter":
		return fmt.Sprintf("https://twitter.com/intent/tweet?url=%s&text=%s", u, encodeComponent(text)), true
	case "linkedin":
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + u, true
	case "facebook":
		return "https://www.facebook.com/sharer/sharer.php?u=" + u, true
	default:
	}
	return "", false
}

// 空格编码为 %20 而不是 +
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
