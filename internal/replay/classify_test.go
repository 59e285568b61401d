package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	parent1 = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	parent2 = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestClassifyParentsFirstIsMainline(t *testing.T) {
	assert.Equal(t, 1, ClassifyParents(parent1, []string{parent1, parent2}))
}

func TestClassifyParentsSecondIsMainline(t *testing.T) {
	assert.Equal(t, 2, ClassifyParents(parent2, []string{parent1, parent2}))
}

func TestClassifyParentsAmbiguous(t *testing.T) {
	assert.Equal(t, 0, ClassifyParents("cccccccccccccccccccccccccccccccccccccccc", []string{parent1, parent2}))
}

func TestClassifyParentsNoBase(t *testing.T) {
	assert.Equal(t, 0, ClassifyParents("", []string{parent1, parent2}))
}

func TestClassifyParentsRejectsWrongArity(t *testing.T) {
	assert.Equal(t, 0, ClassifyParents(parent1, []string{parent1}))
	assert.Equal(t, 0, ClassifyParents(parent1, []string{parent1, parent2, "cc"}))
}

func TestMatchParentFullId(t *testing.T) {
	parents := []string{parent1, parent2}
	assert.Equal(t, 1, matchParent(parent1, parents))
	assert.Equal(t, 2, matchParent(parent2, parents))
}

func TestMatchParentPrefix(t *testing.T) {
	parents := []string{parent1, parent2}
	assert.Equal(t, 1, matchParent("aaaa", parents))
	assert.Equal(t, 2, matchParent("bbbbbbbb", parents))
}

func TestMatchParentNoMatch(t *testing.T) {
	parents := []string{parent1, parent2}
	assert.Equal(t, 0, matchParent("feedface", parents))
	assert.Equal(t, 0, matchParent("", parents))
}

func TestMatchParentRejectsTooShortPrefix(t *testing.T) {
	parents := []string{parent1, parent2}
	assert.Equal(t, 0, matchParent("a", parents))
	assert.Equal(t, 0, matchParent("bbb", parents))
	assert.Equal(t, 2, matchParent("bbbb", parents))
}
