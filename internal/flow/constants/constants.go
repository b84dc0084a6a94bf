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

// Package constants defines the constants used in the flow execution service and engine.
package constants

// FlowType defines the type of flow execution.
type FlowType string

const (
	// FlowTypeAuthentication represents a flow execution for user authentication.
	FlowTypeAuthentication FlowType = "AUTHENTICATION"
	// FlowTypeRegistration represents a flow execution for user registration.
	FlowTypeRegistration FlowType = "REGISTRATION"
)

// FlowStatus defines the status of a flow execution.
type FlowStatus string

const (
	// FlowStatusComplete indicates that the flow execution is complete.
	FlowStatusComplete FlowStatus = "COMPLETE"
	// FlowStatusIncomplete indicates that the flow execution is incomplete.
	FlowStatusIncomplete FlowStatus = "INCOMPLETE"
	// FlowStatusError indicates that there was an error during the flow execution.
	FlowStatusError FlowStatus = "ERROR"
)

// FlowStepType defines the type of a step in the flow execution.
type FlowStepType string

const (
	// StepTypeView represents a step in the flow that requires user interaction.
	StepTypeView FlowStepType = "VIEW"
)

// NodeType defines the node types in the flow execution.
type NodeType string

const (
	// NodeTypeTaskExecution represents a node that drives a single executor.
	NodeTypeTaskExecution NodeType = "TASK_EXECUTION"
	// NodeTypeDecision represents a node that branches on a user choice.
	NodeTypeDecision NodeType = "DECISION"
	// NodeTypePromptOnly represents a node that collects input for downstream nodes.
	NodeTypePromptOnly NodeType = "PROMPT_ONLY"
	// NodeTypeAggregatedTasks represents a node that drives several executors together.
	NodeTypeAggregatedTasks NodeType = "AGGREGATED_TASKS"
)

// NodeStatus defines the status of a node in the flow execution.
type NodeStatus string

const (
	// NodeStatusComplete indicates that the node has completed its execution successfully.
	NodeStatusComplete NodeStatus = "COMPLETE"
	// NodeStatusIncomplete indicates that the node has not completed its execution.
	NodeStatusIncomplete NodeStatus = "INCOMPLETE"
	// NodeStatusFailure indicates that the node has failed during its execution.
	NodeStatusFailure NodeStatus = "FAILURE"
)

// NodeResponseType defines the type of response from a node in the flow execution.
type NodeResponseType string

const (
	// NodeResponseTypeView indicates that the node response requires user interaction.
	NodeResponseTypeView NodeResponseType = "VIEW"
	// NodeResponseTypeRetry indicates that the node response is a retry action.
	NodeResponseTypeRetry NodeResponseType = "RETRY"
)

// ExecutorStatus defines the lifecycle status of an executor within a flow.
type ExecutorStatus string

const (
	// ExecNotStarted indicates that the executor has not been engaged yet.
	ExecNotStarted ExecutorStatus = "NOT_STARTED"
	// ExecAttributesRequired indicates that the executor requires attribute input to proceed.
	ExecAttributesRequired ExecutorStatus = "ATTRIBUTES_REQUIRED"
	// ExecCredentialEnrollmentRequired indicates that the executor requires credential input to proceed.
	ExecCredentialEnrollmentRequired ExecutorStatus = "CREDENTIAL_ENROLLMENT_REQUIRED"
	// ExecVerificationRequired indicates that the executor requires verification input to proceed.
	ExecVerificationRequired ExecutorStatus = "VERIFICATION_REQUIRED"
	// ExecAuthenticationRequired indicates that the executor requires authentication input to proceed.
	ExecAuthenticationRequired ExecutorStatus = "AUTHENTICATION_REQUIRED"
	// ExecActionComplete indicates that the executor has completed all of its phases.
	ExecActionComplete ExecutorStatus = "ACTION_COMPLETE"
	// ExecFailure indicates that the executor has failed during its execution.
	ExecFailure ExecutorStatus = "FAILURE"
)

// ActionType defines the type of action that can be performed in a flow step.
type ActionType string

const (
	// ActionTypeView indicates that the action is a view type, requiring user selection.
	ActionTypeView ActionType = "VIEW"
)

const (
	// AuthFlowGraphPrefix defines the prefix for authentication flow graph IDs.
	AuthFlowGraphPrefix = "auth_flow_config_"
	// RegistrationFlowGraphPrefix defines the prefix for registration flow graph IDs.
	RegistrationFlowGraphPrefix = "registration_flow_config_"
)

const (
	// RuntimeKeyUserID is the runtime data key holding the resolved user ID.
	RuntimeKeyUserID = "userID"
	// RuntimeKeyProvisionedUserID is the runtime data key guarding repeated provisioning.
	RuntimeKeyProvisionedUserID = "provisionedUserID"
)
