package cli

import (
	"github.com/disiqueira/gotree/v3"

	"remdex/internal/item"
	"remdex/internal/store"
)

// RenderTree renders an index snapshot as an ASCII tree rooted at "/",
// with the trash as a sibling branch. Items are expected pre-sorted, as
// Store.Items returns them. Items whose parent chain dangles or cycles
// are unreachable and simply absent from the rendering.
func RenderTree(items []item.Item) string {
	children := make(map[item.Parent][]item.Item, len(items))
	for _, it := range items {
		children[it.Parent] = append(children[it.Parent], it)
	}

	root := gotree.New("/")
	addBranch(root, children, item.RootParent(), make(map[item.ID]bool))

	if trashed := children[item.TrashParent()]; len(trashed) > 0 {
		trash := root.Add(store.TrashName + "/")
		addBranch(trash, children, item.TrashParent(), make(map[item.ID]bool))
	}

	return root.Print()
}

func addBranch(node gotree.Tree, children map[item.Parent][]item.Item, parent item.Parent, seen map[item.ID]bool) {
	for _, it := range children[parent] {
		if seen[it.ID] {
			continue
		}

		if !it.IsDir() {
			node.Add(itemLabel(it))

			continue
		}

		seen[it.ID] = true
		addBranch(node.Add(itemLabel(it)), children, item.DirectoryParent(it.ID), seen)
	}
}
