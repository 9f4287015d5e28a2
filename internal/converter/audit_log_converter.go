package converter

import (
	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/domain/entity"
)

// AuditLogToResponse flattens the stored metadata of an audit entry
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	entityName, _ := log.Metadata[entity.AuditMetaEntity].(string)
	entityID, _ := log.Metadata[entity.AuditMetaEntityID].(string)

	return &dto.AuditLogResponse{
		ID:        log.ID,
		RequestID: log.RequestID,
		Action:    log.Action,
		Entity:    entityName,
		EntityID:  entityID,
		OldValue:  log.Metadata[entity.AuditMetaOldValue],
		NewValue:  log.Metadata[entity.AuditMetaNewValue],
		CreatedAt: log.CreatedAt,
	}
}

// AuditLogsToResponses keeps the order the entries were loaded in
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
