package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/styleguide/internal/block"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

func blk(category, title string) *block.Block {
	return &block.Block{Info: block.Metadata{Category: category, Title: title}, Source: "a.css", Line: 1}
}

func TestFold_Shape(t *testing.T) {
	b := blk("Forms => Inputs", "Text Field")
	root, err := Fold(nil, []*block.Block{b})
	require.NoError(t, err)

	require.Equal(t, []string{"Forms"}, root.Names())
	forms, ok := root.Get("Forms")
	require.True(t, ok)
	require.NotNil(t, forms.Items)
	require.Empty(t, forms.Items)
	require.NotNil(t, forms.Subcat)

	inputs, ok := forms.Subcat.Get("Inputs")
	require.True(t, ok)
	require.Equal(t, []*block.Block{b}, inputs.Items)
	require.Nil(t, inputs.Subcat)
	require.Equal(t, []string{"Forms", "Inputs"}, inputs.Path)
	require.Equal(t, "Forms => Inputs", inputs.Category())
}

func TestFold_PreservesOrder(t *testing.T) {
	first := blk("Buttons", "Primary")
	second := blk("Buttons", "Secondary")
	third := blk("Alerts", "Error")
	fourth := blk("Buttons", "Link")

	root, err := Fold(NewRoot(), []*block.Block{first, second, third, fourth})
	require.NoError(t, err)

	require.Equal(t, []string{"Buttons", "Alerts"}, root.Names())
	buttons, _ := root.Get("Buttons")
	require.Equal(t, []*block.Block{first, second, fourth}, buttons.Items)
	require.Equal(t, 4, root.Count())
}

func TestFold_IntermediateNodesHoldItems(t *testing.T) {
	parent := blk("Layout", "Overview")
	child := blk("Layout => Grid => Columns", "Twelve")

	root, err := Fold(nil, []*block.Block{child, parent})
	require.NoError(t, err)

	layout, _ := root.Lookup("Layout")
	require.Equal(t, []*block.Block{parent}, layout.Items)
	require.True(t, layout.HasChildren())

	grid, ok := root.Lookup("Layout", "Grid")
	require.True(t, ok)
	require.Empty(t, grid.Items)

	cols, ok := root.Lookup("Layout", "Grid", "Columns")
	require.True(t, ok)
	require.Equal(t, []*block.Block{child}, cols.Items)

	_, ok = root.Lookup("Layout", "Flex")
	require.False(t, ok)
}

func TestFold_NoNormalizationBeyondTrim(t *testing.T) {
	root, err := Fold(nil, []*block.Block{
		blk("Forms =>Inputs", "a"),
		blk("  Forms   =>   Inputs ", "b"),
		blk("forms => Inputs", "c"),
		blk("Forms => Text  Inputs", "d"),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"Forms", "forms"}, root.Names())
	inputs, _ := root.Lookup("Forms", "Inputs")
	require.Len(t, inputs.Items, 2)
	_, ok := root.Lookup("Forms", "Text  Inputs")
	require.True(t, ok)
}

func TestFold_MissingCategory(t *testing.T) {
	_, err := Fold(nil, []*block.Block{blk("", "orphan")})
	require.ErrorIs(t, err, ErrMissingCategory)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestSplitPath(t *testing.T) {
	require.Equal(t, []string{"Buttons", "Primary"}, SplitPath("Buttons => Primary"))
	require.Equal(t, []string{"Solo"}, SplitPath(" Solo "))
	require.Equal(t, []string{"A", "", "B"}, SplitPath("A => => B"))
}

func TestWalk_SkipChildren(t *testing.T) {
	root, err := Fold(nil, []*block.Block{blk("A => B", "x"), blk("C", "y")})
	require.NoError(t, err)

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "A"
	})
	require.Equal(t, []string{"A", "C"}, seen)
}
