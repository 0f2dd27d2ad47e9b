package project

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"html/template"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// defaultCacheSize 渲染结果缓存的默认容量
const defaultCacheSize = 64

// modalTemplate 项目详情浮层的 HTML 片段
const modalTemplate = `<div class="modal-project" data-project="{{.Key}}">
  <h2 id="modalTitle">{{.Title}}</h2>
  <div id="modalTech">{{range .Tech}}<span class="tech-tag">{{.}}</span>{{end}}</div>
  <div id="modalDescription">{{.DescriptionHTML}}</div>
  <div id="modalFeatures">
    <h4>Key Features</h4>
    <ul>{{range .Features}}
      <li>{{.}}</li>{{end}}
    </ul>
  </div>
  <div class="modal-actions">
    <a id="modalGithub" class="btn" href="{{.GitHub}}" target="_blank" rel="noopener">GitHub</a>{{if .HasDemo}}
    <a id="modalDemo" class="btn" href="{{.Demo}}" target="_blank" rel="noopener" style="display: inline-flex">Live Demo</a>{{end}}
  </div>
</div>
`

type modalData struct {
	Project
	DescriptionHTML template.HTML
}

// Renderer 把项目渲染为详情浮层片段，结果按内容缓存
type Renderer struct {
	md    goldmark.Markdown
	tmpl  *template.Template
	cache *lru.Cache[uint64, template.HTML]
}

// NewRenderer 创建渲染器，cacheSize <= 0 时使用默认容量
func NewRenderer(cacheSize int) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	tmpl, err := template.New("modal").Parse(modalTemplate)
	if err != nil {
		return nil, fmt.Errorf("解析浮层模板失败：%w", err)
	}

	cache, err := lru.New[uint64, template.HTML](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("创建渲染缓存失败：%w", err)
	}

	return &Renderer{
		// 不启用 html.WithUnsafe，描述中的原始 HTML 会被忽略
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		tmpl:  tmpl,
		cache: cache,
	}, nil
}

// Render 渲染项目详情浮层
func (r *Renderer) Render(p Project) (template.HTML, error) {
	key := fingerprint(p)
	if html, ok := r.cache.Get(key); ok {
		return html, nil
	}

	var desc bytes.Buffer
	if err := r.md.Convert([]byte(p.Description), &desc); err != nil {
		return "", fmt.Errorf("渲染项目 %s 描述失败：%w", p.Key, err)
	}

	var out bytes.Buffer
	data := modalData{Project: p, DescriptionHTML: template.HTML(desc.String())}
	if err := r.tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("渲染项目 %s 浮层失败：%w", p.Key, err)
	}

	html := template.HTML(out.String())
	r.cache.Add(key, html)
	return html, nil
}

// CacheLen 返回缓存条目数
func (r *Renderer) CacheLen() int { return r.cache.Len() }

func fingerprint(p Project) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%#v", p)
	return h.Sum64()
}
