package output

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where descriptions start when the name is short enough.
	descriptionColumn = 30
)

// TreeNode is one path segment of a rendered tree.
type TreeNode struct {
	Name        string
	Description string
	IsDir       bool
	Children    []*TreeNode
}

// child returns the child named name, adding it when absent.
func (n *TreeNode) child(name string, isDir bool) *TreeNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &TreeNode{Name: name, IsDir: isDir}
	n.Children = append(n.Children, c)
	return c
}

func (n *TreeNode) sort() {
	slices.SortFunc(n.Children, func(a, b *TreeNode) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	for _, c := range n.Children {
		c.sort()
	}
}

// RenderFileTree renders paths as a tree below rootName, directories first,
// with each leaf's description aligned at a fixed column.
// Files maps slash-separated paths relative to rootName to descriptions.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &TreeNode{Name: rootName, IsDir: true}
	for path, desc := range files {
		parts := strings.Split(filepath.ToSlash(path), "/")
		node := root
		for i, part := range parts {
			leaf := i == len(parts)-1
			node = node.child(part, !leaf)
			if leaf {
				node.Description = desc
			}
		}
	}
	root.sort()

	styles := GetStyles()
	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(strings.TrimSuffix(rootName, "/") + "/"))
	sb.WriteString("\n")
	for i, c := range root.Children {
		renderNode(&sb, styles, c, "", i == len(root.Children)-1)
	}
	return sb.String()
}

func renderNode(sb *strings.Builder, styles Styles, node *TreeNode, prefix string, last bool) {
	connector, next := treeEdge, prefix+treeVert
	if last {
		connector, next = treeLast, prefix+treeSpace
	}

	line := prefix + connector + node.Name
	if node.IsDir {
		line += "/"
	}
	if node.Description != "" {
		line += strings.Repeat(" ", max(descriptionColumn-len(line), 2))
		line += styles.Muted.Render(node.Description)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, c := range node.Children {
		renderNode(sb, styles, c, next, i == len(node.Children)-1)
	}
}
