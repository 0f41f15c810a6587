// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package userindex

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// PrintTree renders the tree as an indented hierarchy, one line per username,
// with L/R marking the left and right children.
func (i *Index) PrintTree() string {
	if i.root == nil {
		return "(empty)\n"
	}
	tree := treeprint.NewWithRoot(describe(i.root))
	addChildren(tree, i.root)
	return tree.String()
}

func addChildren(tree treeprint.Tree, n *node) {
	if n.left != nil {
		addChildren(tree.AddMetaBranch("L", describe(n.left)), n.left)
	}
	if n.right != nil {
		addChildren(tree.AddMetaBranch("R", describe(n.right)), n.right)
	}
}

func describe(n *node) string {
	return fmt.Sprintf("%s h=%d accounts=%d", n.username(), n.height, n.accounts.ActiveRecordCount())
}
