package srcjarerr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateAttachment(t *testing.T) {
	dup := &DuplicateAttachmentError{Key: "g:a:jar:sources:1", AttachedPath: "a.jar", RequestedPath: "b.jar"}

	assert.True(t, IsDuplicateAttachment(dup))
	assert.True(t, IsDuplicateAttachment(fmt.Errorf("packaging failed: %w", dup)))
	assert.False(t, IsDuplicateAttachment(ErrNoProject))
	assert.False(t, IsDuplicateAttachment(nil))
	assert.Contains(t, dup.Error(), "configure a classifier")
}
