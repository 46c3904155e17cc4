package config

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rpupo63/video-portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

// LoadSSM overlays parameters stored under parameterPath in AWS SSM Parameter
// Store onto config. The last path segment is the key, so
// /portfolio/prod/DATABASE_URL fills DATABASE_URL. Keys already present in
// config are left alone.
func LoadSSM(ctx context.Context, config map[string]string, parameterPath string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return errs.NewConfigError("aws", err)
	}
	return overlayParameters(ctx, ssm.NewFromConfig(awsCfg), config, parameterPath)
}

func overlayParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, config map[string]string, parameterPath string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return errs.NewConfigError("ssm "+parameterPath, err)
		}

		for _, param := range page.Parameters {
			key := path.Base(aws.ToString(param.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			if existing := strings.TrimSpace(config[key]); existing != "" {
				continue
			}
			config[key] = aws.ToString(param.Value)
			loaded++
		}
	}

	log.Info().Str("path", parameterPath).Int("parameters", loaded).Msg("loaded configuration from SSM")
	return nil
}
