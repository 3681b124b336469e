package usecase

import (
	"context"
	"log"

	"resume-evaluator/internal/infrastructure/storage"
	"resume-evaluator/internal/repository"
)

// removeUnreferencedFiles deletes stored files that no upload record points
// at any more. Uploads share a file when they were saved under the same name.
// Failures are logged only; the records are already gone.
func removeUnreferencedFiles(ctx context.Context, resumes repository.ResumeRepository, files storage.Store, logger *log.Logger, filenames ...string) {
	if files == nil {
		return
	}

	seen := make(map[string]struct{}, len(filenames))
	for _, name := range filenames {
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}

		n, err := resumes.CountByFilename(ctx, name)
		if err != nil {
			logger.Printf("[Storage] reference check failed file=%s err=%v", name, err)
			continue
		}
		if n > 0 {
			continue
		}
		if err := files.Delete(ctx, name); err != nil {
			logger.Printf("[Storage] delete failed file=%s err=%v", name, err)
		}
	}
}
