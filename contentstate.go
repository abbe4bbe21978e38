// Package contentstate 将 HTML 片段转换为 draft.js 的 content state
//
// 这个包把一段 HTML 标记（可以包含多个顶层兄弟元素）转换为富文本编辑器使用的
// 结构化文档模型：有序的块列表，每个块带有行内样式范围和实体范围，以及实体表。
//
// 核心功能：
//   - 段落、标题 h1-h6、有序/无序列表（支持嵌套深度）
//   - 行内样式：粗体、斜体、下划线、删除线、代码
//   - 链接 (LINK) 与图片 (IMAGE, atomic 块) 实体
//   - Markdown 输入（经 goldmark 渲染为 HTML 后转换）
//
// Conversion is fail-fast: structural violations such as a block opened
// inside another block, a list item outside any list, or crossed inline tags
// abort the conversion with a typed error. Unknown tags are ignored and their
// content is converted as if the tag were absent.
//
// 示例：
//
//	doc, err := contentstate.Convert(`<p>Hello <b>world</b></p>`)
//	if err != nil {
//	    return err
//	}
//	data, err := json.Marshal(doc)
//
// Range offsets are UTF-16 code units by default, like JavaScript string
// indices; WithOffsetUnit(contentstate.Rune) counts code points instead.
package contentstate
