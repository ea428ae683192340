package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenRandomID(t *testing.T) {
	SetupIDWorker(1)

	t.Log(GenSpecIDStr(), len(GenSpecIDStr()))
	assert.Len(t, GenRandomID(), 32)
}

func Test_RandomStr(t *testing.T) {
	a := RandomStr(100)
	b := RandomStr(100)

	assert.Len(t, a, 100)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-zA-Z]+$`), a)
	assert.NotEqual(t, a, b)
}

func Test_ParseAcceptLanguage(t *testing.T) {
	res := ParseAcceptLanguage("zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7")
	assert.Equal(t, "zh-CN", res)
}

func Test_IsCalendarDate(t *testing.T) {
	assert.True(t, IsCalendarDate("2024-03-15"))
	assert.False(t, IsCalendarDate("2024-3-15"))
	assert.False(t, IsCalendarDate("2024-03-15T00:00:00Z"))
	assert.False(t, IsCalendarDate(""))
}

func Test_FileExt(t *testing.T) {
	assert.Equal(t, "jpg", FileExt("beach.JPG"))
	assert.Equal(t, "png", FileExt("a.b.png"))
	assert.Equal(t, "", FileExt("noext"))
}
