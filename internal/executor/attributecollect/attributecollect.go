/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package attributecollect provides the executor for collecting user attributes.
package attributecollect

import (
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/constants"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/flow/model"
	"github.com/shanggeeth/carbon-identity-framework-sub000/internal/system/log"
)

// ExecutorName is the registered name of the attribute collect executor.
const ExecutorName = "AttributeCollectExecutor"

// AttributeCollectExecutor collects the attributes declared on the node and
// records them on the draft user. The attributes to collect come entirely from
// the node's input declarations.
type AttributeCollectExecutor struct {
	model.Executor
}

var _ model.AttributeCollector = (*AttributeCollectExecutor)(nil)

// NewAttributeCollectExecutor creates a new attribute collect executor.
func NewAttributeCollectExecutor(properties map[string]string) *AttributeCollectExecutor {
	return &AttributeCollectExecutor{
		Executor: model.NewExecutor(ExecutorName, nil, properties),
	}
}

// CollectAttributes pauses until all required attributes are supplied, then
// records the supplied values on the draft user.
func (e *AttributeCollectExecutor) CollectAttributes(ctx *model.NodeContext) (*model.ExecutorResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AttributeCollectExecutor"),
		log.String(log.LoggerKeyFlowID, ctx.FlowID))

	if missing := e.CheckInputData(ctx); len(missing) > 0 {
		return &model.ExecutorResponse{
			Status:       constants.ExecAttributesRequired,
			RequiredData: missing,
		}, nil
	}

	for _, input := range ctx.NodeInputData {
		value, ok := ctx.UserInputData[input.Name]
		if !ok || value == "" {
			continue
		}
		ctx.DraftUser.SetAttribute(input.Name, value)
	}

	logger.Debug("Collected user attributes", log.Int("attributeCount", len(ctx.DraftUser.Attributes)))
	return &model.ExecutorResponse{
		Status: constants.ExecActionComplete,
	}, nil
}
