package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMAPI is the subset of the SSM client used to read parameters
type SSMAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// OverlaySSM copies every parameter stored under parameterPath into config,
// keyed by the last path element (/blog-admin/prod/JWT_SECRET -> JWT_SECRET).
// Existing keys are overwritten. It returns the number of keys applied.
func OverlaySSM(ctx context.Context, client SSMAPI, parameterPath string, config map[string]string) (int, error) {
	if parameterPath == "" {
		return 0, nil
	}

	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	applied := 0
	paginator := ssm.NewGetParametersByPathPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return applied, fmt.Errorf("reading ssm parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			name := strings.TrimSpace(path.Base(aws.ToString(p.Name)))
			if name == "" || name == "/" || name == "." {
				continue
			}
			config[name] = aws.ToString(p.Value)
			applied++
		}
	}
	return applied, nil
}
