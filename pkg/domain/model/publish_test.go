package model_test

import (
	"testing"

	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
	"github.com/gardener/ghrelease-publisher/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Repository
		wantErr bool
	}{
		{
			name:  "owner and name",
			input: "gardener/vscode-gardener-tools",
			want:  model.Repository{Owner: "gardener", Name: "vscode-gardener-tools"},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "no slash", input: "gardener", wantErr: true},
		{name: "empty owner", input: "/tools", wantErr: true},
		{name: "empty name", input: "gardener/", wantErr: true},
		{name: "too many segments", input: "github.com/gardener/tools", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseRepository(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
				return
			}
			gt.NoError(t, err)
			gt.V(t, got).Equal(tt.want)
			gt.V(t, got.String()).Equal(tt.input)
		})
	}
}

func TestAssetName(t *testing.T) {
	gt.V(t, model.AssetName("1.2.3")).Equal("vscode-gardener-tools-1.2.3.vsix")
	// whitespace is kept as is
	gt.V(t, model.AssetName(" 1.2.3\n")).Equal("vscode-gardener-tools- 1.2.3\n.vsix")
}

func TestPublishInput_Validate(t *testing.T) {
	valid := model.PublishInput{
		Repository: "gardener/tools",
		RepoDir:    "/repo",
		OutDir:     "/out",
	}
	gt.NoError(t, valid.Validate())

	for _, mutate := range []func(*model.PublishInput){
		func(x *model.PublishInput) { x.Repository = "" },
		func(x *model.PublishInput) { x.RepoDir = "" },
		func(x *model.PublishInput) { x.OutDir = "" },
		func(x *model.PublishInput) { x.Repository = "gardener" },
	} {
		input := valid
		mutate(&input)
		err := input.Validate()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
	}
}
