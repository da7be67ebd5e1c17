package baidu

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

const (
	sourcePrimary = "百度搜索"
	sourceBackup  = "百度搜索(备用)"

	maxContainers       = 10
	maxBackupContainers = 20
	maxResults          = 8
)

// 结果容器选择器，按优先级排列，第一个有匹配的生效
var containerSelectors = []string{
	`div.result`,
	`div.c-container`,
	`div[class*="result"]`,
	`div[class*="c-container"]`,
	`div.content-left`,
	`div[srcid]`,
}

var abstractSelectors = []string{
	`div.c-abstract`,
	`div.content`,
	`div.desc`,
	`div.summary`,
	`span.content-right`,
	`div[class*="abstract"]`,
	`div[class*="desc"]`,
	`div[class*="summary"]`,
}

var (
	titleClass   = regexp.MustCompile(`title|head`)
	adIndicators = []string{"广告", "推广", "ad", "advertisement"}
	backupAdWord = []string{"广告", "推广"}

	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`百度快照.*`),
		regexp.MustCompile(`相关视频.*`),
		regexp.MustCompile(`广告`),
		regexp.MustCompile(`推广`),
		regexp.MustCompile(`查看更多`),
		regexp.MustCompile(`\.\.\.`),
	}
)

// titleRules 标题元素的候选规则，依次尝试
var titleRules = []func(*goquery.Selection) *goquery.Selection{
	func(s *goquery.Selection) *goquery.Selection { return s.Find("h3").First() },
	func(s *goquery.Selection) *goquery.Selection {
		return s.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
			for _, class := range strings.Fields(a.AttrOr("class", "")) {
				if titleClass.MatchString(class) {
					return true
				}
			}
			return false
		}).First()
	},
	func(s *goquery.Selection) *goquery.Selection { return s.Find("a").First() },
}

// Parser 解析百度搜索结果页
type Parser struct {
	// Origin 用于补全以 "/" 开头的跳转链接
	Origin string
}

// Parse 先按容器选择器解析，无结果时走备用解析，最后去重并截断
func (p *Parser) Parse(doc *goquery.Document) []search.Result {
	var results []search.Result

	for _, selector := range containerSelectors {
		containers := doc.Find(selector)
		if containers.Length() == 0 {
			continue
		}
		logger.Log.Infof("使用选择器 '%s' 找到 %d 个结果", selector, containers.Length())
		containers.Slice(0, min(maxContainers, containers.Length())).Each(func(_ int, s *goquery.Selection) {
			if r, ok := p.parseContainer(s); ok {
				results = append(results, r)
			}
		})
		break
	}

	if len(results) == 0 {
		logger.Log.Debug("主选择器无结果，使用备用解析")
		results = p.parseBackup(doc)
	}

	return search.Dedupe(results, maxResults)
}

func (p *Parser) parseContainer(s *goquery.Selection) (search.Result, bool) {
	var titleElem *goquery.Selection
	for _, rule := range titleRules {
		if sel := rule(s); sel.Length() > 0 {
			titleElem = sel
			break
		}
	}
	if titleElem == nil {
		return search.Result{}, false
	}

	title := cleanText(titleElem.Text())
	if title == "" {
		return search.Result{}, false
	}

	link, ok := titleElem.Attr("href")
	if !ok {
		// h3 本身没有 href，取其内部的链接
		link = titleElem.Find("a[href]").First().AttrOr("href", "")
	}
	if strings.HasPrefix(link, "/") {
		link = p.Origin + link
	}

	abstract := extractAbstract(s)

	if isAd(s) {
		return search.Result{}, false
	}

	return search.Result{Title: title, Link: link, Abstract: abstract, Source: sourcePrimary}, true
}

func extractAbstract(s *goquery.Selection) string {
	for _, selector := range abstractSelectors {
		elem := s.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		if text := cleanText(elem.Text()); runeLen(text) > 10 {
			return text
		}
	}

	// 从整个容器文本中去掉标题
	containerText := cleanText(s.Text())
	titleElem := s.Find("h3").First()
	if titleElem.Length() == 0 {
		titleElem = s.Find("a").First()
	}
	if titleElem.Length() > 0 {
		titleText := cleanText(titleElem.Text())
		if titleText != "" && strings.Contains(containerText, titleText) {
			abstract := strings.TrimSpace(strings.ReplaceAll(containerText, titleText, ""))
			if runeLen(abstract) > 20 {
				return abstract
			}
		}
	}

	return search.NoAbstract
}

func (p *Parser) parseBackup(doc *goquery.Document) []search.Result {
	var results []search.Result

	containers := doc.Find("div[class], section[class], article[class]")
	containers.Slice(0, min(maxBackupContainers, containers.Length())).Each(func(_ int, s *goquery.Selection) {
		linkElem := s.Find("a[href]").First()
		if linkElem.Length() == 0 {
			return
		}

		title := cleanText(linkElem.Text())
		if runeLen(title) < 5 {
			return
		}
		if containsAny(strings.ToLower(title), backupAdWord) {
			return
		}

		abstract := cleanAbstract(strings.TrimSpace(strings.ReplaceAll(cleanText(s.Text()), title, "")))
		if abstract == "" {
			abstract = search.NoAbstract
		}

		results = append(results, search.Result{
			Title:    title,
			Link:     linkElem.AttrOr("href", ""),
			Abstract: abstract,
			Source:   sourceBackup,
		})
	})

	return results
}

func isAd(s *goquery.Selection) bool {
	return containsAny(strings.ToLower(s.Text()), adIndicators)
}

func cleanAbstract(abstract string) string {
	if runeLen(abstract) < 10 {
		return ""
	}
	for _, re := range noisePatterns {
		abstract = re.ReplaceAllString(abstract, "")
	}
	if runeLen(abstract) > 200 {
		abstract = string([]rune(abstract)[:197]) + "..."
	}
	return strings.TrimSpace(abstract)
}

// cleanText 合并空白字符
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
