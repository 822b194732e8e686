package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetSize(t *testing.T) {
	type TestCase struct {
		description string
		width       int
		height      int
		wantHeight  int
	}

	testCases := []TestCase{
		{
			description: "landscape 4:3",
			width:       400,
			height:      300,
			wantHeight:  150,
		},
		{
			description: "portrait",
			width:       100,
			height:      400,
			wantHeight:  800,
		},
		{
			description: "upscales small images",
			width:       50,
			height:      50,
			wantHeight:  200,
		},
		{
			description: "rounds half up",
			width:       400,
			height:      301,
			wantHeight:  151,
		},
		{
			description: "rounds down below half",
			width:       300,
			height:      100,
			wantHeight:  67,
		},
		{
			description: "very wide image keeps one row",
			width:       10000,
			height:      1,
			wantHeight:  1,
		},
		{
			description: "degenerate input",
			width:       0,
			height:      10,
			wantHeight:  1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			w, h := TargetSize(testCase.width, testCase.height)

			assert.Equal(t, TargetWidth, w)
			assert.Equal(t, testCase.wantHeight, h)
		})
	}
}
