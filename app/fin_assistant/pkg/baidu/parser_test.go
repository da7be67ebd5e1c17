package baidu

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

const primaryPage = `<html><body>
<div id="content_left">
  <div class="result c-container" srcid="1">
    <h3 class="t"><a href="/link?url=abc">比亚迪2023年营业收入创新高</a></h3>
    <div class="c-abstract">比亚迪发布年度报告，全年营业收入6023亿元，同比增长42%。</div>
  </div>
  <div class="result c-container" srcid="2">
    <h3 class="t"><a href="https://news.example.com/2">宁德时代净利润同比增长</a></h3>
    <div class="c-abstract">短</div>
    <span class="content-right">宁德时代公布三季度业绩，净利润保持稳定增长态势。</span>
  </div>
  <div class="result c-container">
    <h3 class="t"><a href="https://loan.example.com">推广：低息贷款</a></h3>
    <div class="c-abstract">最快当天到账，额度高利息低，点击立即申请。</div>
  </div>
  <div class="result c-container">
    <h3 class="t"><a href="/link?url=dup">比亚迪2023年营业收入创新高</a></h3>
    <div class="c-abstract">重复的结果条目，用于验证去重逻辑是否正确。</div>
  </div>
  <div class="result">
    <a class="c-title-link" href="/link?url=zzz">招商银行年报解读</a>
    <p>招商银行公布年度报告，资产质量持续改善，零售业务表现亮眼。</p>
  </div>
  <div class="result">
    <h3><a href="https://short.example.com">贵州茅台</a></h3>
    <p>简短</p>
  </div>
  <div class="result"><p>没有任何链接和标题的容器</p></div>
</div>
</body></html>`

const backupPage = `<html><body>
<section class="item"><a href="https://a.example.com/1">中国平安发布年度财报</a><p>中国平安全年归母营运利润稳健增长，寿险改革成效显现。百度快照 更多内容</p></section>
<article class="item"><a href="https://a.example.com/2">推广 保险产品大促销</a><p>限时优惠。</p></article>
<div class="item"><a href="https://a.example.com/3">短标题</a></div>
<div class="item"><a href="/relative/4">招商银行零售业务分析</a></div>
<div><a href="https://a.example.com/5">没有类名的容器标题</a></div>
</body></html>`

func parse(t *testing.T, html string) []search.Result {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return (&Parser{Origin: "https://www.baidu.com"}).Parse(doc)
}

func TestParse_Primary(t *testing.T) {
	got := parse(t, primaryPage)

	require.Len(t, got, 4)
	assert.Equal(t, search.Result{
		Title:    "比亚迪2023年营业收入创新高",
		Link:     "https://www.baidu.com/link?url=abc",
		Abstract: "比亚迪发布年度报告，全年营业收入6023亿元，同比增长42%。",
		Source:   "百度搜索",
	}, got[0])

	assert.Equal(t, "宁德时代净利润同比增长", got[1].Title)
	assert.Equal(t, "https://news.example.com/2", got[1].Link)
	assert.Equal(t, "宁德时代公布三季度业绩，净利润保持稳定增长态势。", got[1].Abstract)

	assert.Equal(t, "招商银行年报解读", got[2].Title)
	assert.Equal(t, "https://www.baidu.com/link?url=zzz", got[2].Link)
	assert.Equal(t, "招商银行公布年度报告，资产质量持续改善，零售业务表现亮眼。", got[2].Abstract)

	assert.Equal(t, "贵州茅台", got[3].Title)
	assert.Equal(t, search.NoAbstract, got[3].Abstract)
}

func TestParse_DropsAds(t *testing.T) {
	for _, r := range parse(t, primaryPage) {
		assert.NotContains(t, r.Title, "推广")
	}

	// 关键词按子串匹配，"download" 也会被视为广告
	page := `<div class="result"><h3><a href="/x">软件 Download 页面</a></h3></div>
<div class="result"><h3><a href="/y">正常的搜索结果标题</a></h3></div>`
	got := parse(t, page)
	require.Len(t, got, 1)
	assert.Equal(t, "正常的搜索结果标题", got[0].Title)
}

func TestParse_Capped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, `<div class="c-container"><h3><a href="/r/%d">结果标题%d</a></h3></div>`, i, i)
	}
	sb.WriteString("</body></html>")

	got := parse(t, sb.String())
	assert.Len(t, got, 8)
	assert.Equal(t, "结果标题0", got[0].Title)
	assert.Equal(t, "结果标题7", got[7].Title)
}

func TestParse_SelectorPriority(t *testing.T) {
	// div.result 有匹配时不会再看 div[srcid]
	page := `<div srcid="9"><h3><a href="/s">只在srcid容器里的标题</a></h3></div>
<div class="result"><h3><a href="/r">结果容器里的标题</a></h3></div>`
	got := parse(t, page)
	require.Len(t, got, 1)
	assert.Equal(t, "结果容器里的标题", got[0].Title)
}

func TestParse_Backup(t *testing.T) {
	got := parse(t, backupPage)

	require.Len(t, got, 2)
	assert.Equal(t, search.Result{
		Title:    "中国平安发布年度财报",
		Link:     "https://a.example.com/1",
		Abstract: "中国平安全年归母营运利润稳健增长，寿险改革成效显现。",
		Source:   "百度搜索(备用)",
	}, got[0])
	assert.Equal(t, search.Result{
		Title:    "招商银行零售业务分析",
		Link:     "/relative/4",
		Abstract: search.NoAbstract,
		Source:   "百度搜索(备用)",
	}, got[1])
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, parse(t, "<html><body><p>nothing</p></body></html>"))
}

func TestCleanAbstract(t *testing.T) {
	assert.Equal(t, "", cleanAbstract("太短了"))
	assert.Equal(t, "公司业绩持续增长，市场份额扩大", cleanAbstract("公司业绩持续增长，市场份额扩大...查看更多"))

	long := strings.Repeat("长", 250)
	got := cleanAbstract(long)
	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", cleanText("  a\n\t b 　 c  "))
	assert.Equal(t, "", cleanText(" \n "))
}
